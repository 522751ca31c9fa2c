package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/campusops/invigilate/internal/config"
	"github.com/campusops/invigilate/pkg/clients/gmailclient"
	"github.com/campusops/invigilate/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env         string
	Cfg         *config.Config
	Database    db.Store
	GmailClient *gmailclient.Client
	Logger      *zap.Logger
	Ctx         context.Context
}
