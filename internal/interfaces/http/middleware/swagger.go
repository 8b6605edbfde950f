package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
)

const swaggerPrefix = "/swagger"

func isSwaggerPath(path string) bool {
	return strings.HasPrefix(path, swaggerPrefix)
}

// SwaggerProtection guards the API documentation endpoints.
//
// Disabled docs answer 404. With a non-empty AllowedIPs list (single
// addresses or CIDR ranges) every other caller gets 403.
func SwaggerProtection(cfg config.SwaggerConfig) gin.HandlerFunc {
	var allowedNets []*net.IPNet
	var allowedIPs []net.IP
	for _, ipStr := range cfg.AllowedIPs {
		if strings.Contains(ipStr, "/") {
			if _, network, err := net.ParseCIDR(ipStr); err == nil {
				allowedNets = append(allowedNets, network)
			}
			continue
		}
		if ip := net.ParseIP(ipStr); ip != nil {
			allowedIPs = append(allowedIPs, ip)
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound,
				dto.NewErrorResponse(dto.ErrCodeNotFound, "API documentation is not available"))
			return
		}

		if len(cfg.AllowedIPs) > 0 && !isIPAllowed(getClientIP(c), allowedIPs, allowedNets) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Access to API documentation is restricted"))
			return
		}

		c.Next()
	}
}

// getClientIP prefers gin's proxy-aware ClientIP and falls back to the
// socket address
func getClientIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}

func isIPAllowed(ip net.IP, allowedIPs []net.IP, allowedNets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowedIP := range allowedIPs {
		if allowedIP.Equal(ip) {
			return true
		}
	}
	for _, network := range allowedNets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
