package ports

import "github.com/aalvaropc/shipquote/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
