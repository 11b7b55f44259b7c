package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(""))
	assert.Equal(t, "Somsri", Text("  Somsri  "))
	assert.Equal(t, "Hello", Text("<b>Hello</b><script>alert(1)</script>"))
	assert.Equal(t, "ค่ายฤดูร้อน 2025", Text("ค่ายฤดูร้อน 2025"))
	assert.Equal(t, "O'Brien & Co", Text("O'Brien & Co"))
}
