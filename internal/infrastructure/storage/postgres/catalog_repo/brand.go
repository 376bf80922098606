package catalog_repo

import (
	"catalog/internal/domain/catalog/brand"
	"catalog/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ brand.Repository = (*BrandRepo)(nil)

// BrandRepo implements brand.Repository on catalog_brand.
type BrandRepo struct {
	*dictionaryRepo[brand.Brand]
}

// NewBrandRepo creates a new brand repository.
func NewBrandRepo(txm *postgres.TxManager) *BrandRepo {
	return &BrandRepo{dictionaryRepo: newDictionaryRepo[brand.Brand](txm, "catalog_brand", "brand")}
}
