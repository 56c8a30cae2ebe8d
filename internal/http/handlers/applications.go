package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/deepakpotluri/jobPortal-Backend/internal/config"
	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/application"
	"github.com/deepakpotluri/jobPortal-Backend/internal/storage"
	"github.com/gin-gonic/gin"
)

type ApplicationsStore interface {
	Create(ctx context.Context, a application.Application) error
	ListByJob(ctx context.Context, jobID string) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type ApplicationsHandler struct {
	repo  ApplicationsStore
	files *storage.ResumeStore
	log   *slog.Logger
}

func NewApplicationsHandler(repo ApplicationsStore, files *storage.ResumeStore, log *slog.Logger) *ApplicationsHandler {
	return &ApplicationsHandler{repo: repo, files: files, log: log}
}

// POST /api/applications/submit (multipart)
func (h *ApplicationsHandler) Submit(ctx *gin.Context) {
	jobID := ctx.PostForm("jobId")
	email := ctx.PostForm("email")
	linkedinUrl := ctx.PostForm("linkedinUrl")

	resumePath := ""

	// The resume file is optional.
	if file, err := ctx.FormFile("resume"); err == nil && file != nil {
		name, err := h.files.Save(file)

		if err != nil {
			RespondInternal(ctx, "Failed to submit application", err)
			return
		}

		resumePath = path.Join(h.files.Dir(), name)
	}

	a := application.New(jobID, email, linkedinUrl, resumePath)

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	if err := h.repo.Create(cctx, a); err != nil {
		RespondInternal(ctx, "Failed to submit application", err)
		return
	}

	RespondFields(ctx, http.StatusCreated, gin.H{
		"message":       "Application submitted successfully",
		"applicationId": a.ID,
	})
}

// GET /api/applications/job/:jobId
func (h *ApplicationsHandler) ListForJob(ctx *gin.Context) {
	jobID := ctx.Param("jobId")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	applications, err := h.repo.ListByJob(cctx, jobID)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch applications", err)
		return
	}

	RespondFields(ctx, http.StatusOK, gin.H{
		"applications": applications,
	})
}

// GET /api/applications/resume/download/:filename
func (h *ApplicationsHandler) DownloadResume(ctx *gin.Context) {
	filename := ctx.Param("filename")

	filePath, err := h.files.Resolve(filename)

	if err != nil {
		RespondNotFound(ctx, "Resume not found")
		return
	}

	ctx.FileAttachment(filePath, filename)
}

// GET /api/applications/resume/view/:filename
func (h *ApplicationsHandler) ViewResume(ctx *gin.Context) {
	filename := ctx.Param("filename")

	rc, err := h.files.Open(filename)

	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			RespondNotFound(ctx, "Resume not found")
			return
		}

		RespondInternal(ctx, "Failed to stream resume", err)
		return
	}

	defer rc.Close()

	ctx.Header("Content-Type", "application/pdf")
	ctx.Header("Content-Disposition", "inline")
	ctx.Status(http.StatusOK)

	if _, err := io.Copy(ctx.Writer, rc); err != nil {
		// Headers are already on the wire; the partial response stays as-is.
		h.log.Error("resume stream failed", "filename", filename, "err", err)
	}
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/applications/:applicationId/status
func (h *ApplicationsHandler) UpdateStatus(ctx *gin.Context) {
	applicationID := ctx.Param("applicationId")

	var req statusUpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.UpdateStatus(cctx, applicationID, req.Status)

	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			RespondNotFound(ctx, "Application not found")
			return
		}

		RespondInternal(ctx, "Failed to update application status", err)
		return
	}

	RespondFields(ctx, http.StatusOK, gin.H{
		"message": "Application status updated successfully",
	})
}
