package service

import (
	"go.uber.org/zap"

	"github.com/hance08/weka/internal/store"
)

type Config struct {
	Precision int32
}

type Service struct {
	Process *ProcessService
	Run     *RunService
}

func NewService(repo store.Repository, cfg Config, log *zap.Logger) *Service {
	return &Service{
		Process: NewProcessService(cfg, log),
		Run:     NewRunService(repo, cfg),
	}
}
