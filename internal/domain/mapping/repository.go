package mapping

import "context"

type MappingRepository interface {
	SaveConfig(ctx context.Context, config ImportFileConfig) (ImportFileConfig, error)
	GetConfig(ctx context.Context, id int64) (ImportFileConfig, error)
	GetConfigByName(ctx context.Context, name string) (ImportFileConfig, error)
	ListConfigs(ctx context.Context, fileType string, activeOnly bool) ([]ImportFileConfig, error)
	DeleteConfig(ctx context.Context, id int64) error
}
