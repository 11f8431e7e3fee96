package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListTemplatesByCodesEmpty(t *testing.T) {
	repo := NewProductRepository(nil)

	products, err := repo.ListTemplatesByCodes(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, products)
}
