package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naniedobe1/PoleBrothers/services"
)

// uploadFolder is the fixed logical folder every capture lands under.
const uploadFolder = "poles"

// UploadURLRequest is the issuer's input contract.
type UploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// UploadURLResponse carries the short-lived signed PUT URL, the long-lived
// public URL, and the computed storage key.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Filename  string `json:"filename"`
}

// Issuer handles upload URL issuance. Stateless: signing creates no object.
type Issuer struct {
	Signer *services.ObjectSigner
}

// Router builds the issuer's HTTP surface: POST / signs, OPTIONS / answers
// CORS preflight unconditionally, everything else is 405.
func (i *Issuer) Router() *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(cors())

	r.POST("/", i.IssueUploadURL)
	r.OPTIONS("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}

// IssueUploadURL signs a one-hour PUT URL for the requested filename. The
// storage key is prefixed with the folder and a millisecond timestamp so
// repeated filenames never collide.
func (i *Issuer) IssueUploadURL(c *gin.Context) {
	var input UploadURLRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename is required"})
		return
	}

	objectName := fmt.Sprintf("%s/%d-%s", uploadFolder, time.Now().UnixMilli(), input.Filename)

	uploadURL, err := i.Signer.PresignPut(c.Request.Context(), objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		UploadURL: uploadURL,
		PublicURL: i.Signer.PublicURL(objectName),
		Filename:  objectName,
	})
}
