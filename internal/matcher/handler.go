package matcher

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hiring-signals/internal/shared/server/respond"
)

const (
	formJobDescription = "jd"
	formTopN           = "n"
	formResumes        = "resumes"

	multipartMemory = 32 << 20
)

// Scorer ranks resumes against a job description.
type Scorer interface {
	Rank(ctx context.Context, jobDescription string, resumes []Resume, topN int) ([]Score, error)
}

// Handler serves the resume ranking endpoint.
type Handler struct {
	Ranker      Scorer
	DefaultTopN int
	MaxBytes    int64
}

// NewHandler constructs a Handler.
func NewHandler(ranker Scorer, defaultTopN int, maxBytes int64) *Handler {
	if defaultTopN <= 0 {
		defaultTopN = DefaultTopN
	}
	return &Handler{Ranker: ranker, DefaultTopN: defaultTopN, MaxBytes: maxBytes}
}

// RegisterRoutes attaches the ranking route.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	if h.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "Upload too large", err.Error())
			return
		}
	}

	jd := c.PostForm(formJobDescription)
	if strings.TrimSpace(jd) == "" {
		respond.Error(c, http.StatusBadRequest, "Job description is required", "")
		return
	}

	topN := h.DefaultTopN
	if raw := strings.TrimSpace(c.PostForm(formTopN)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond.Error(c, http.StatusBadRequest, "n must be a positive integer", "")
			return
		}
		topN = n
	}

	var headers []*multipart.FileHeader
	if form := c.Request.MultipartForm; form != nil {
		headers = form.File[formResumes]
	}
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "No resumes uploaded", "")
		return
	}
	c.Set("resumeCount", len(headers))

	resumes := make([]Resume, 0, len(headers))
	for _, fh := range headers {
		data, err := readFile(fh)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "Unable to read "+fh.Filename, err.Error())
			return
		}
		resumes = append(resumes, Resume{Filename: fh.Filename, Data: data})
	}

	scores, err := h.Ranker.Rank(c.Request.Context(), jd, resumes, topN)
	if err != nil {
		var (
			emptyErr   *EmptyTextError
			extractErr *ExtractionError
		)
		switch {
		case errors.As(err, &emptyErr):
			respond.Error(c, http.StatusBadRequest, emptyErr.Error(), "")
		case errors.As(err, &extractErr):
			respond.Error(c, http.StatusInternalServerError, extractErr.Error(), extractErr.Err.Error())
		case errors.Is(err, ErrEmptyJobDescription), errors.Is(err, ErrNoResumes), errors.Is(err, ErrInvalidTopN):
			respond.Error(c, http.StatusBadRequest, err.Error(), "")
		default:
			respond.Error(c, http.StatusInternalServerError, "Internal server error", err.Error())
		}
		return
	}

	respond.OK(c, scores)
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
