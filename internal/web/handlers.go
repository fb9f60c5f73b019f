package web

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/MikeySharma/frame-generator/internal/utils"
	"github.com/MikeySharma/frame-generator/pkg/catalog"
	"github.com/MikeySharma/frame-generator/pkg/loader"
	"github.com/MikeySharma/frame-generator/pkg/session"
	"github.com/MikeySharma/frame-generator/pkg/types"
)

// Server hosts the single in-memory editing session behind the preview page
type Server struct {
	store     *session.Store
	catalog   *catalog.Catalog
	loader    *loader.Loader
	maxUpload int64
}

// NewServer creates the presentation layer over a store and its frame catalog
func NewServer(store *session.Store, cat *catalog.Catalog, ld *loader.Loader, maxUpload int64) *Server {
	return &Server{store: store, catalog: cat, loader: ld, maxUpload: maxUpload}
}

// Router returns a gin engine with logging, recovery and all routes registered
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	RegisterRoutes(r, s)
	return r
}

type frameView struct {
	catalog.Frame
	Swatch catalog.Swatch `json:"swatch"`
}

type stateView struct {
	Params     types.Params `json:"params"`
	HasPhoto   bool         `json:"has_photo"`
	Generation uint64       `json:"generation"`
	Zoom       types.Range  `json:"zoom_range"`
	FrameSize  types.Range  `json:"frame_size_range"`
}

// paramsRequest carries a partial parameter change; absent fields are kept
type paramsRequest struct {
	FrameID   *string  `json:"frame_id"`
	Zoom      *float64 `json:"zoom"`
	FrameSize *float64 `json:"frame_size"`
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) index(c *gin.Context) {
	st := s.currentState()
	c.HTML(http.StatusOK, "index", gin.H{
		"Frames":      s.frameViews(c),
		"State":       st,
		"ZoomPercent": int(math.Round(st.Params.Zoom * 100)),
		"UploadLimit": utils.FormatFileSize(s.maxUpload),
	})
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, s.currentState())
}

func (s *Server) frames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"frames": s.frameViews(c)})
}

func (s *Server) thumbnail(c *gin.Context) {
	img, err := s.catalog.Thumbnail(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) uploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing photo file"})
		return
	}
	if s.maxUpload > 0 && fh.Size > s.maxUpload {
		abortWithError(c, fmt.Errorf("%w: %s exceeds %s", loader.ErrTooLarge,
			utils.FormatFileSize(fh.Size), utils.FormatFileSize(s.maxUpload)))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	photo, err := s.loader.DecodePhoto(f)
	if err != nil {
		log.Printf("photo %q rejected: %v", fh.Filename, err)
		abortWithError(c, err)
		return
	}
	if err := s.store.SetPhoto(c.Request.Context(), photo); err != nil {
		abortWithError(c, err)
		return
	}
	b := photo.Bounds()
	log.Printf("photo %q loaded (%dx%d, %s)", fh.Filename, b.Dx(), b.Dy(), utils.FormatFileSize(fh.Size))
	c.JSON(http.StatusOK, s.currentState())
}

func (s *Server) clearPhoto(c *gin.Context) {
	s.store.Reset()
	c.JSON(http.StatusOK, s.currentState())
}

func (s *Server) updateParams(c *gin.Context) {
	var req paramsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next := s.store.Params()
	if req.FrameID != nil {
		next.FrameID = *req.FrameID
	}
	if req.Zoom != nil {
		next.Zoom = *req.Zoom
	}
	if req.FrameSize != nil {
		next.FrameSize = *req.FrameSize
	}

	if err := s.store.Update(c.Request.Context(), next.Clamped()); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.currentState())
}

func (s *Server) preview(c *gin.Context) {
	out, ok := s.store.Output()
	if !ok {
		abortWithError(c, session.ErrNoPhoto)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, out.Format.MIMEType(), out.Data)
}

func (s *Server) download(c *gin.Context) {
	out, ok := s.store.Output()
	if !ok {
		abortWithError(c, session.ErrNoPhoto)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename()))
	c.Data(http.StatusOK, out.Format.MIMEType(), out.Data)
}

func (s *Server) currentState() stateView {
	st := stateView{
		Params:    s.store.Params(),
		HasPhoto:  s.store.HasPhoto(),
		Zoom:      types.ZoomRange,
		FrameSize: types.FrameSizeRange,
	}
	if out, ok := s.store.Output(); ok {
		st.Generation = out.Generation
	}
	return st
}

func (s *Server) frameViews(c *gin.Context) []frameView {
	frames := s.catalog.Frames()
	views := make([]frameView, 0, len(frames))
	for _, f := range frames {
		sw, err := s.catalog.Swatch(c.Request.Context(), f.ID)
		if err != nil {
			log.Printf("swatch for %s failed: %v", f.ID, err)
		}
		views = append(views, frameView{Frame: f, Swatch: sw})
	}
	return views
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNoPhoto):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrUnknownFrame):
		status = http.StatusNotFound
	case errors.Is(err, loader.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, loader.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, loader.ErrTooSmall):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, loader.ErrDecode):
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
