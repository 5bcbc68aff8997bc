package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/letimovie/internal/model"
	"github.com/user/letimovie/internal/repository"
	"github.com/user/letimovie/internal/utils"
)

// JSON API，响应体和错误消息是对外契约的一部分，保持英文原样

// ListMovies GET /api/movies?page=&limit=
func (h *Handler) ListMovies(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	result, err := h.Store.List(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMovie GET /api/movies/:id
func (h *Handler) GetMovie(c *gin.Context) {
	movie, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

// AddComment POST /api/movies/:id/comments
func (h *Handler) AddComment(c *gin.Context) {
	var input model.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Please provide name, email and text for the comment")
		return
	}

	comment, err := h.Store.AddComment(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.apiError(c, err)
		return
	}

	// 只返回新建的那条评论，不回传整部电影
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment PUT /api/movies/:movieId/comments/:commentId
func (h *Handler) UpdateComment(c *gin.Context) {
	var upd model.CommentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil || upd.Empty() {
		utils.BadRequest(c, "Please provide at least one field to update")
		return
	}

	comment, err := h.Store.UpdateComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), upd)
	if err != nil {
		h.apiError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment DELETE /api/movies/:movieId/comments/:commentId
func (h *Handler) DeleteComment(c *gin.Context) {
	err := h.Store.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId"))
	if err != nil {
		h.apiError(c, err)
		return
	}

	utils.OK(c, "Comment deleted successfully")
}

// apiError 仓库错误到 HTTP 状态的统一映射：
// 格式错误的 ID 是 400，格式正确但不存在是 404，其余一律 500
func (h *Handler) apiError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		utils.BadRequest(c, "Invalid movie ID")
	case errors.Is(err, repository.ErrMovieNotFound):
		utils.NotFound(c, "Movie not found")
	case errors.Is(err, repository.ErrCommentNotFound):
		utils.NotFound(c, "Comment not found")
	default:
		c.Error(err)
		utils.InternalServerError(c)
	}
}
