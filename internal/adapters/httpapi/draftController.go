package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type DraftController struct{ dc DraftUseCase }

func NewDraftController(dc DraftUseCase) *DraftController {
	return &DraftController{dc: dc}
}

type draftRequest struct {
	Content string `json:"content" binding:"required"`
}

func (ctl *DraftController) CreateDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}
	d, err := ctl.dc.CreateDraft(c.Request.Context(), userID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (ctl *DraftController) ListDrafts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := ctl.dc.ListDrafts(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *DraftController) UpdateDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	draftID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}
	d, err := ctl.dc.UpdateDraft(c.Request.Context(), userID, draftID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (ctl *DraftController) DeleteDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	draftID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.dc.DeleteDraft(c.Request.Context(), userID, draftID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *DraftController) PublishDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	draftID, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := ctl.dc.PublishDraft(c.Request.Context(), userID, draftID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}
