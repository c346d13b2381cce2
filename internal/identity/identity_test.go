package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaims_NameFallbacks(t *testing.T) {
	explicit := &Claims{UserMetadata: map[string]any{
		"first_name": "Ana",
		"last_name":  "Rojas",
		"full_name":  "Ignored Name",
	}}
	assert.Equal(t, "Ana", explicit.FirstName())
	assert.Equal(t, "Rojas", explicit.LastName())

	fromFull := &Claims{UserMetadata: map[string]any{
		"full_name": "Ana María Rojas",
	}}
	assert.Equal(t, "Ana", fromFull.FirstName())
	assert.Equal(t, "María Rojas", fromFull.LastName())

	singleWord := &Claims{UserMetadata: map[string]any{
		"full_name": "Ana",
	}}
	assert.Equal(t, "Ana", singleWord.FirstName())
	assert.Equal(t, "", singleWord.LastName())

	empty := &Claims{}
	assert.Equal(t, "", empty.FirstName())
	assert.Equal(t, "", empty.LastName())
}
