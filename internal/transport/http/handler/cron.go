package handler

import (
	"net/http"

	"github.com/gameday-relay/internal/application/gameday"
	"go.uber.org/zap"
)

// CronHandler serves the scheduler-invoked notification trigger.
type CronHandler struct {
	svc gameday.Service
	log *zap.SugaredLogger
}

func NewCronHandler(svc gameday.Service, log *zap.SugaredLogger) *CronHandler {
	return &CronHandler{svc: svc, log: log}
}

// Trigger runs one notification check. Unlike the webhook path, the response
// waits for the whole workflow so the scheduler sees check failures as 500s.
func (h *CronHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.svc.Run(r.Context())
	if err != nil {
		h.log.Errorw("trigger failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: outcome})
}
