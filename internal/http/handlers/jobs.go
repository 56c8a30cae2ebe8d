package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/deepakpotluri/jobPortal-Backend/internal/cache"
	"github.com/deepakpotluri/jobPortal-Backend/internal/config"
	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/job"
	"github.com/deepakpotluri/jobPortal-Backend/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type JobsStore interface {
	Create(ctx context.Context, j job.Job) error
	List(ctx context.Context) ([]job.WithEmployer, error)
	GetByID(ctx context.Context, id string) (job.WithEmployer, error)
	ListByOwner(ctx context.Context, ownerID string) ([]job.Job, error)
	GetOwned(ctx context.Context, id, ownerID string) (job.Job, error)
	Update(ctx context.Context, j job.Job) error
	Delete(ctx context.Context, id, ownerID string) error
	Search(ctx context.Context, filter job.SearchFilter) ([]job.Job, error)
}

type JobsHandler struct {
	repo  JobsStore
	cache *cache.Cache // nil disables caching
}

func NewJobsHandler(repo JobsStore, c *cache.Cache) *JobsHandler {
	return &JobsHandler{repo: repo, cache: c}
}

const (
	cacheKeyList    = "jobs:list"
	cacheKeySearch  = "jobs:search:"
	jsonContentType = "application/json; charset=utf-8"
)

// GET /api/jobs
func (h *JobsHandler) ListJobs(ctx *gin.Context) {
	if payload, ok := h.cache.Get(ctx.Request.Context(), cacheKeyList); ok {
		ctx.Data(http.StatusOK, jsonContentType, payload)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	jobs, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch jobs", err)
		return
	}

	body := gin.H{
		"success": true,
		"message": "Jobs fetched successfully",
		"data":    jobs,
	}

	if payload, err := json.Marshal(body); err == nil {
		h.cache.Set(ctx.Request.Context(), cacheKeyList, payload)
	}

	ctx.JSON(http.StatusOK, body)
}

// GET /api/jobs/:id
func (h *JobsHandler) GetJob(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	j, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			RespondNotFound(ctx, "Job not found")
			return
		}

		RespondInternal(ctx, "Failed to fetch job", err)
		return
	}

	RespondData(ctx, http.StatusOK, "Job fetched successfully", j)
}

// GET /api/my-jobs
func (h *JobsHandler) ListMyJobs(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx, "No authentication token, access denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	jobs, err := h.repo.ListByOwner(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch jobs", err)
		return
	}

	RespondData(ctx, http.StatusOK, "Jobs fetched successfully", jobs)
}

// POST /api/jobs
func (h *JobsHandler) CreateJob(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx, "No authentication token, access denied")
		return
	}

	var req job.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// postedBy always comes from the verified token, never from the payload.
	newJob, verr := job.New(req, userID)

	if verr != nil {
		RespondBadRequest(ctx, verr.Message, verr.Details)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.repo.Create(cctx, newJob); err != nil {
		RespondInternal(ctx, "Failed to post job", err)
		return
	}

	h.cache.InvalidatePrefix(ctx.Request.Context(), "jobs:")

	// Re-read to resolve the employer email for the response.
	saved, err := h.repo.GetByID(cctx, newJob.ID)

	if err != nil {
		saved = job.WithEmployer{Job: newJob}
	}

	RespondData(ctx, http.StatusCreated, "Job posted successfully", saved)
}

// PUT /api/jobs/:id
func (h *JobsHandler) UpdateJob(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx, "No authentication token, access denied")
		return
	}

	id := ctx.Param("id")

	var req job.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// Existence and ownership are one combined check; a job owned by someone
	// else reads exactly like a missing one.
	current, err := h.repo.GetOwned(cctx, id, userID)

	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			RespondNotFound(ctx, "Job not found or you do not have permission to update it")
			return
		}

		RespondInternal(ctx, "Failed to update job", err)
		return
	}

	req.Apply(&current)

	// Re-run the cross-field invariants so a partial payload cannot leave the
	// record inconsistent.
	if verr := current.Validate(); verr != nil {
		RespondBadRequest(ctx, verr.Message, verr.Details)
		return
	}

	if err := h.repo.Update(cctx, current); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			RespondNotFound(ctx, "Job not found or you do not have permission to update it")
			return
		}

		RespondInternal(ctx, "Failed to update job", err)
		return
	}

	h.cache.InvalidatePrefix(ctx.Request.Context(), "jobs:")

	RespondData(ctx, http.StatusOK, "Job updated successfully", current)
}

// DELETE /api/jobs/:id
func (h *JobsHandler) DeleteJob(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx, "No authentication token, access denied")
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id, userID)

	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			RespondNotFound(ctx, "Job not found or you do not have permission to delete it")
			return
		}

		RespondInternal(ctx, "Error deleting job", err)
		return
	}

	h.cache.InvalidatePrefix(ctx.Request.Context(), "jobs:")

	RespondData(ctx, http.StatusOK, "Job deleted successfully", nil)
}

// GET /api/jobs/search
func (h *JobsHandler) SearchJobs(ctx *gin.Context) {
	keyword := ctx.Query("keyword")
	location := ctx.Query("location")

	cacheKey := cacheKeySearch + "keyword=" + url.QueryEscape(keyword) + "&location=" + url.QueryEscape(location)

	if payload, ok := h.cache.Get(ctx.Request.Context(), cacheKey); ok {
		ctx.Data(http.StatusOK, jsonContentType, payload)
		return
	}

	var filter job.SearchFilter

	if keyword != "" {
		filter.Keyword = &keyword
	}
	if location != "" {
		filter.Location = &location
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	jobs, err := h.repo.Search(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Failed to search jobs", err)
		return
	}

	body := gin.H{
		"success": true,
		"data":    jobs,
	}

	if payload, err := json.Marshal(body); err == nil {
		h.cache.Set(ctx.Request.Context(), cacheKey, payload)
	}

	ctx.JSON(http.StatusOK, body)
}
