package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	pc    PostUseCase
	users UserUseCase
}

func NewPostController(pc PostUseCase, users UserUseCase) *PostController {
	return &PostController{pc: pc, users: users}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}
	p, err := ctl.pc.CreatePost(c.Request.Context(), userID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := ctl.pc.GetPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *PostController) ListUserPosts(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	u, err := ctl.users.ResolveHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := ctl.pc.ListUserPosts(c.Request.Context(), u.ID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Feed پست‌های کاربر و دنبال‌شونده‌ها، جدیدترین اول
func (ctl *PostController) Feed(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := ctl.pc.Feed(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *PostController) LikePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.pc.LikePost(c.Request.Context(), userID, postID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post liked"})
}

func (ctl *PostController) UnlikePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.pc.UnlikePost(c.Request.Context(), userID, postID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post unliked"})
}
