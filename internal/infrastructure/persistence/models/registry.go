package models

// All returns every model in dependency order, for AutoMigrate in tests
// and local development.
func All() []any {
	return []any{
		&UserModel{},
		&PropertyModel{},
		&PropertyDocumentModel{},
		&InvestmentModel{},
		&RedemptionModel{},
		&FeeTierModel{},
		&MarketModel{},
		&PositionModel{},
		&AccreditationModel{},
		&ReferralModel{},
	}
}
