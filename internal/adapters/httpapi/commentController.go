package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController {
	return &CommentController{cc: cc}
}

func (ctl *CommentController) CreateComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Body     string `json:"body" binding:"required"`
		ParentID string `json:"parentId" binding:"omitempty,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		id := uuid.FromStringOrNil(req.ParentID)
		parentID = &id
	}
	cm, err := ctl.cc.CreateComment(c.Request.Context(), userID, postID, parentID, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (ctl *CommentController) ListPostComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := ctl.cc.ListPostComments(c.Request.Context(), postID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *CommentController) ListReplies(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctl.replies(c, commentID)
}

// ListRepliesByQuery serves /replies?commentId=.
func (ctl *CommentController) ListRepliesByQuery(c *gin.Context) {
	raw := c.Query("commentId")
	if raw == "" {
		badRequest(c, "commentId is required")
		return
	}
	commentID, err := uuid.FromString(raw)
	if err != nil {
		badRequest(c, "invalid commentId")
		return
	}
	ctl.replies(c, commentID)
}

func (ctl *CommentController) replies(c *gin.Context, commentID uuid.UUID) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := ctl.cc.ListReplies(c.Request.Context(), commentID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
