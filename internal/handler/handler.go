package handler

import (
	"github.com/alibomaye27/yourvoice/internal/gemini"
	"github.com/alibomaye27/yourvoice/internal/repository"
	"github.com/alibomaye27/yourvoice/internal/screening"
	"github.com/alibomaye27/yourvoice/internal/vapi"
	"go.uber.org/zap"
)

type Handler struct {
	Logger     *zap.Logger
	Repo       *repository.Repository
	Initiator  *screening.Initiator
	Reconciler *screening.Reconciler
	Vapi       *vapi.Client
	Generator  *gemini.Generator // nil when no Gemini key is configured
}
