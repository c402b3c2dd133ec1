package service

import (
	"github.com/deppfellow/items-api/internal/lib/job"
	"github.com/deppfellow/items-api/internal/repository"
	"github.com/deppfellow/items-api/internal/server"
)

type Services struct {
	Item *ItemService
	Job  *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Item: NewItemService(s, repos.Item),
		Job:  s.Job,
	}, nil
}
