package catalog_repo

import (
	"catalog/internal/domain/catalog/itemtype"
	"catalog/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ itemtype.Repository = (*TypeRepo)(nil)

// TypeRepo implements itemtype.Repository on catalog_type.
type TypeRepo struct {
	*dictionaryRepo[itemtype.Type]
}

// NewTypeRepo creates a new item type repository.
func NewTypeRepo(txm *postgres.TxManager) *TypeRepo {
	return &TypeRepo{dictionaryRepo: newDictionaryRepo[itemtype.Type](txm, "catalog_type", "type")}
}
