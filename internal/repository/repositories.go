package repository

import (
	"github.com/deppfellow/items-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Item *ItemRepository
}

// NewRepositories builds every repository on top of the server's store.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Item: NewItemRepository(s.DB),
	}
}
