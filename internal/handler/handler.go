package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/letimovie/internal/config"
	"github.com/user/letimovie/internal/model"
	"github.com/user/letimovie/internal/repository"
	"github.com/user/letimovie/internal/utils"
)

// 列表页每页条数，与 API 默认值保持一致
const defaultPageSize = 20

// Handler HTTP 处理器
type Handler struct {
	Store  repository.MovieStore
	Config *config.Config
}

// NewHandler 创建处理器
func NewHandler(store repository.MovieStore, cfg *config.Config) *Handler {
	return &Handler{
		Store:  store,
		Config: cfg,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
	}

	// 取一次性提示（读后即清）
	session := sessions.Default(c)
	if flash := session.Get("flash"); flash != nil {
		res["Flash"] = flash
		session.Delete("flash")
		session.Save()
	}

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// setFlash 写入一次性提示
func setFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.Set("flash", message)
	session.Save()
}

// ==================== 公开页面 ====================

// Home 首页：分页电影卡片
func (h *Handler) Home(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.Store.List(c.Request.Context(), page, defaultPageSize)
	if err != nil {
		c.Error(err)
		c.HTML(http.StatusInternalServerError, "home.html", h.RenderData(c, gin.H{
			"Title": h.Config.SiteName,
			"Flash": "获取电影列表失败",
		}))
		return
	}

	// 上一页/下一页夹在 [1, totalPages]，模板据此禁用边界按钮
	prev := utils.ClampPage(result.CurrentPage-1, result.TotalPages)
	next := utils.ClampPage(result.CurrentPage+1, result.TotalPages)

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title":       h.Config.SiteName + " - 电影目录",
		"Movies":      result.Movies,
		"CurrentPage": result.CurrentPage,
		"TotalPages":  result.TotalPages,
		"PrevPage":    prev,
		"NextPage":    next,
		"HasPrev":     result.CurrentPage > 1,
		"HasNext":     result.CurrentPage < result.TotalPages,
	}))
}

// Movie 详情页：完整电影文档 + 评论区
func (h *Handler) Movie(c *gin.Context) {
	movie, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderMovieError(c, err)
		return
	}

	session := sessions.Default(c)
	data := gin.H{
		"Title": h.Config.SiteName,
		"Movie": movie,
	}
	if movie.Title != nil {
		data["Title"] = *movie.Title + " - " + h.Config.SiteName
	}

	// 正在编辑的评论（一次最多一条）
	if editID := c.Query("edit"); editID != "" {
		data["EditID"] = editID
	}

	// 评论表单预填上次用过的昵称和邮箱
	if name := session.Get("commenter_name"); name != nil {
		data["CommenterName"] = name
	}
	if email := session.Get("commenter_email"); email != nil {
		data["CommenterEmail"] = email
	}

	c.HTML(http.StatusOK, "movie.html", h.RenderData(c, data))
}

// NotFoundPage 404 页面
func (h *Handler) NotFoundPage(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": "页面不存在 - " + h.Config.SiteName,
	}))
}

// ==================== 评论表单（页面内提交，处理后重定向回详情页） ====================

// AddCommentForm 详情页新增评论
func (h *Handler) AddCommentForm(c *gin.Context) {
	movieID := c.Param("id")
	input := model.CommentInput{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Text:  c.PostForm("text"),
	}

	if input.Name == "" || input.Email == "" || input.Text == "" {
		setFlash(c, "发表评论失败：昵称、邮箱和内容都不能为空")
		c.Redirect(http.StatusFound, "/movie/"+movieID+"#comments")
		return
	}

	if _, err := h.Store.AddComment(c.Request.Context(), movieID, input); err != nil {
		h.flashMutationError(c, err, "发表评论失败")
		c.Redirect(http.StatusFound, "/movie/"+movieID+"#comments")
		return
	}

	// 记住评论人，下次表单预填
	session := sessions.Default(c)
	session.Set("commenter_name", input.Name)
	session.Set("commenter_email", input.Email)
	session.Save()

	c.Redirect(http.StatusFound, "/movie/"+movieID+"#comments")
}

// UpdateCommentForm 详情页编辑评论
func (h *Handler) UpdateCommentForm(c *gin.Context) {
	movieID := c.Param("id")
	upd := model.CommentUpdate{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Text:  c.PostForm("text"),
	}

	if upd.Empty() {
		setFlash(c, "更新评论失败：至少修改一个字段")
		c.Redirect(http.StatusFound, "/movie/"+movieID+"#comments")
		return
	}

	if _, err := h.Store.UpdateComment(c.Request.Context(), movieID, c.Param("commentId"), upd); err != nil {
		h.flashMutationError(c, err, "更新评论失败")
	}
	c.Redirect(http.StatusFound, "/movie/"+movieID+"#comments")
}

// DeleteCommentForm 详情页删除评论
func (h *Handler) DeleteCommentForm(c *gin.Context) {
	movieID := c.Param("id")

	if err := h.Store.DeleteComment(c.Request.Context(), movieID, c.Param("commentId")); err != nil {
		h.flashMutationError(c, err, "删除评论失败")
	}
	c.Redirect(http.StatusFound, "/movie/"+movieID+"#comments")
}

// renderMovieError 详情页读取失败的统一出口
func (h *Handler) renderMovieError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrInvalidID) || errors.Is(err, repository.ErrMovieNotFound) {
		h.NotFoundPage(c)
		return
	}
	c.Error(err)
	c.HTML(http.StatusInternalServerError, "404.html", h.RenderData(c, gin.H{
		"Title": "服务器出错 - " + h.Config.SiteName,
		"Flash": "加载电影失败，请稍后再试",
	}))
}

// flashMutationError 把评论变更失败转成页面提示，不区分错误种类
func (h *Handler) flashMutationError(c *gin.Context, err error, prefix string) {
	if !errors.Is(err, repository.ErrInvalidID) &&
		!errors.Is(err, repository.ErrMovieNotFound) &&
		!errors.Is(err, repository.ErrCommentNotFound) {
		c.Error(err)
	}
	setFlash(c, prefix)
}
