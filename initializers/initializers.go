package initializers

import (
	"context"

	"erm-backend/config"
	"erm-backend/fiberlog"
	audithandler "erm-backend/lib/audit"
	authhandler "erm-backend/lib/auth"
	deptknowledgehandler "erm-backend/lib/dept-knowledge"
	categoryhandler "erm-backend/lib/dicts/category"
	departmenthandler "erm-backend/lib/dicts/department"
	xlsexport "erm-backend/lib/export/xls"
	filestorage "erm-backend/lib/file-storage"
	inboxhandler "erm-backend/lib/inbox"
	notifyhandler "erm-backend/lib/notify"
	riskhandler "erm-backend/lib/risk"
	settingshandler "erm-backend/lib/settings"
	usershandler "erm-backend/lib/users"
	workflowhandler "erm-backend/lib/workflow"
	routinghandler "erm-backend/lib/workflow/routing"
	connectionhub "erm-backend/lib/ws/hub/connection-hub"
	s3client "erm-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	filestorage.NewHandler(s3client.Client)
	usershandler.NewHandler()
	authhandler.NewHandler()
	departmenthandler.NewHandler()
	categoryhandler.NewHandler()
	deptknowledgehandler.NewHandler()
	settingshandler.NewHandler()
	xlsexport.NewHandler()
	audithandler.NewHandler()
	notifyhandler.NewHandler()
	routinghandler.NewHandler()
	workflowhandler.NewHandler()
	inboxhandler.NewHandler()
	riskhandler.NewHandler()
}
