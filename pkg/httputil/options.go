package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

func options(c *gin.Context, methods string) {
	c.Header("allow", methods)
	c.Render(http.StatusNoContent, render.JSON{})
}

func OptionsGet(c *gin.Context) {
	options(c, "OPTIONS, GET")
}

func OptionsPost(c *gin.Context) {
	options(c, "OPTIONS, POST")
}

func OptionsGetPost(c *gin.Context) {
	options(c, "OPTIONS, GET, POST")
}

func OptionsGetPostPut(c *gin.Context) {
	options(c, "OPTIONS, GET, POST, PUT")
}

func OptionsGetDelete(c *gin.Context) {
	options(c, "OPTIONS, GET, DELETE")
}

func OptionsGetPatchDelete(c *gin.Context) {
	options(c, "OPTIONS, GET, PATCH, DELETE")
}

func OptionsPatchDelete(c *gin.Context) {
	options(c, "OPTIONS, PATCH, DELETE")
}
