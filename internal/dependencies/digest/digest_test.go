package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256RoundTrip(t *testing.T) {
	d := NewSHA256()

	stored, err := d.Sum("pw")
	require.NoError(t, err)
	assert.Len(t, stored, 64)

	assert.True(t, d.Verify(stored, "pw"))
	assert.False(t, d.Verify(stored, "other"))
}

func TestSHA256IsDeterministic(t *testing.T) {
	d := NewSHA256()

	a, _ := d.Sum("secret")
	b, _ := d.Sum("secret")
	assert.Equal(t, a, b)
}

func TestBcryptRoundTrip(t *testing.T) {
	d := NewBcrypt()

	stored, err := d.Sum("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored)

	assert.True(t, d.Verify(stored, "pw"))
	assert.False(t, d.Verify(stored, "other"))
}

func TestBcryptSaltsEachSum(t *testing.T) {
	d := NewBcrypt()

	a, _ := d.Sum("secret")
	b, _ := d.Sum("secret")
	assert.NotEqual(t, a, b)
	assert.True(t, d.Verify(a, "secret"))
	assert.True(t, d.Verify(b, "secret"))
}
