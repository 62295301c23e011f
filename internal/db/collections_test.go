package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityKindCollection(t *testing.T) {
	assert.Equal(t, "clips", KindClip.Collection())
}

func TestEntityKindCollectionUnmapped(t *testing.T) {
	assert.Panics(t, func() {
		_ = EntityKind(99).Collection()
	})
}
