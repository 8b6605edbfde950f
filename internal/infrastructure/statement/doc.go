// Package statement renders investor statements as HTML and converts them to
// PDF with headless Chrome.
package statement
