package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/feedback-service/internal/model"
	"github.com/maxviazov/feedback-service/internal/repository"
	"github.com/maxviazov/feedback-service/internal/service"
	"github.com/maxviazov/feedback-service/pkg/pagination"
	"github.com/maxviazov/feedback-service/pkg/response"
)

const (
	msgFeedbackNotFound = "Feedback data not found."
	msgFeedbackAdded    = "Feedback added successfully"
)

type FeedbackHandler struct {
	svc      service.FeedbackService
	defaults pagination.Defaults
}

func NewFeedbackHandler(svc service.FeedbackService, defaultPerPage int) *FeedbackHandler {
	return &FeedbackHandler{
		svc:      svc,
		defaults: pagination.Defaults{Page: 0, PerPage: defaultPerPage},
	}
}

func (h *FeedbackHandler) Register(r *gin.RouterGroup) {
	r.GET(FeedbackListPath, h.list)
	r.POST(FeedbackSubmitPath, h.submit)
}

func (h *FeedbackHandler) list(c *gin.Context) {
	window, err := pagination.Resolve(
		pagination.FromQuery(c.GetQuery("page")),
		pagination.FromQuery(c.GetQuery("perPage")),
		h.defaults,
	)
	if err != nil {
		_ = c.Error(err)
		response.WriteError(c, err)
		return
	}

	res, err := h.svc.List(c.Request.Context(), repository.Page{Limit: window.PerPage, Offset: window.Offset})
	if err != nil {
		_ = c.Error(err)
		response.WriteError(c, err)
		return
	}

	if len(res.Items) == 0 {
		response.Write(c, response.Success([]model.Feedback{}, response.WithMessage(msgFeedbackNotFound)))
		return
	}

	response.Write(c, response.SuccessPage(response.Page{
		Data: res.Items,
		Meta: response.Meta{
			Page:       window.Page,
			PerPage:    window.PerPage,
			Total:      res.Total,
			TotalPages: pagination.TotalPages(res.Total, window.PerPage),
		},
	}))
}

func (h *FeedbackHandler) submit(c *gin.Context) {
	var req service.SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		// parsing details stay in the logs
		_ = c.Error(err)
		response.WriteError(c, response.ErrMalformedBody)
		return
	}

	if _, err := h.svc.Submit(c.Request.Context(), req); err != nil {
		_ = c.Error(err)
		response.WriteError(c, err)
		return
	}
	response.Write(c, response.Success([]model.Feedback{}, response.WithMessage(msgFeedbackAdded)))
}
