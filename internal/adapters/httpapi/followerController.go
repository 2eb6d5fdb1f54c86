package httpapi

import (
	"net/http"

	"flock/internal/core/pagination"
	followerPort "flock/internal/ports/follower"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type FollowerController struct {
	fc    FollowerUseCase
	users UserUseCase
}

func NewFollowerController(fc FollowerUseCase, users UserUseCase) *FollowerController {
	return &FollowerController{fc: fc, users: users}
}

func (ctl *FollowerController) FollowUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req followerPort.FollowRequest
	// اعتبارسنجی JSON ورودی
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}
	if err := ctl.fc.FollowUser(c.Request.Context(), userID, req.Handle); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "successfully followed user"})
}

func (ctl *FollowerController) UnfollowUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req followerPort.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, bindingMessage(err))
		return
	}
	if err := ctl.fc.UnfollowUser(c.Request.Context(), userID, req.Handle); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "successfully unfollowed user"})
}

type edgeLister func(c *gin.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[followerPort.FollowDTO], error)

func (ctl *FollowerController) ListFollowers(c *gin.Context) {
	ctl.listByHandle(c, func(c *gin.Context, id uuid.UUID, req pagination.Request) (pagination.Page[followerPort.FollowDTO], error) {
		return ctl.fc.ListFollowers(c.Request.Context(), id, req)
	})
}

func (ctl *FollowerController) ListFollowing(c *gin.Context) {
	ctl.listByHandle(c, func(c *gin.Context, id uuid.UUID, req pagination.Request) (pagination.Page[followerPort.FollowDTO], error) {
		return ctl.fc.ListFollowing(c.Request.Context(), id, req)
	})
}

func (ctl *FollowerController) ListMyFollowers(c *gin.Context) {
	ctl.listMine(c, func(c *gin.Context, id uuid.UUID, req pagination.Request) (pagination.Page[followerPort.FollowDTO], error) {
		return ctl.fc.ListFollowers(c.Request.Context(), id, req)
	})
}

func (ctl *FollowerController) ListMyFollowing(c *gin.Context) {
	ctl.listMine(c, func(c *gin.Context, id uuid.UUID, req pagination.Request) (pagination.Page[followerPort.FollowDTO], error) {
		return ctl.fc.ListFollowing(c.Request.Context(), id, req)
	})
}

func (ctl *FollowerController) listByHandle(c *gin.Context, list edgeLister) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	u, err := ctl.users.ResolveHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeError(c, err)
		return
	}
	ctl.respond(c, list, u.ID, req)
}

func (ctl *FollowerController) listMine(c *gin.Context, list edgeLister) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	ctl.respond(c, list, userID, req)
}

func (ctl *FollowerController) respond(c *gin.Context, list edgeLister, userID uuid.UUID, req pagination.Request) {
	page, err := list(c, userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
