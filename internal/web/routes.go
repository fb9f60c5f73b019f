package web

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the preview page, the frame assets and the JSON API
func RegisterRoutes(r *gin.Engine, s *Server) {
	r.SetHTMLTemplate(template.Must(template.New("index").Parse(indexHTML)))
	r.GET("/", s.index)

	if sub, err := fs.Sub(s.catalog.FS(), "frames"); err == nil {
		r.StaticFS("/frames", http.FS(sub))
	}

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/state", s.state)
		api.GET("/frames", s.frames)
		api.GET("/frames/:id/thumbnail", s.thumbnail)
		api.POST("/photo", s.uploadPhoto)
		api.DELETE("/photo", s.clearPhoto)
		api.PUT("/params", s.updateParams)
		api.GET("/preview", s.preview)
		api.GET("/download", s.download)
	}
}
