package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog-showcase/cmd/api/clients/blogclient"
	"blog-showcase/cmd/api/dto"
	"blog-showcase/cmd/api/services"
	"blog-showcase/cmd/api/trace"
	"blog-showcase/cmd/internal/logger"
)

const (
	msgPostsFailed   = "Failed to fetch posts"
	msgPostFailed    = "Failed to fetch post"
	msgPostNotFound  = "Post not found"
	msgFiltersFailed = "Failed to fetch filters"
)

// respondError는 upstream 오류를 로깅하고 공통 에러 응답으로 변환한다.
// blogclient.ErrNotFound 는 notFoundMsg 가 있을 때만 404 로 내려준다.
func respondError(c *gin.Context, err error, notFoundMsg, failMsg string) {
	fields := logger.Fields{
		"path":       c.Request.URL.Path,
		"request_id": trace.RequestIDFromContext(c.Request.Context()),
		"error":      err.Error(),
	}
	if notFoundMsg != "" && errors.Is(err, blogclient.ErrNotFound) {
		logger.InfoWithFields("post not found upstream", fields)
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: notFoundMsg})
		return
	}
	logger.ErrorWithFields("upstream fetch failed", fields)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: failMsg})
}

// ListPostsHandler godoc
// @Summary      List posts
// @Description  Fetch every upstream record, enrich it and filter by search term and category
// @Tags         posts
// @Param        q         query  string  false  "Search term (title, excerpt, category, tags)"
// @Param        category  query  string  false  "Category name, or All"
// @Produce      json
// @Success      200  {array}   dto.PostDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts [get]
func ListPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.ListPostsInput{
			Query:    c.Query("q"),
			Category: c.Query("category"),
		}
		posts, err := svc.List(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "", msgPostsFailed)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// GetPostHandler godoc
// @Summary      Get post by id
// @Description  Fetch a single upstream record and enrich it
// @Tags         posts
// @Param        id   path   string  true  "Post id"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [get]
func GetPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err, msgPostNotFound, msgPostFailed)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// FeaturedPostsHandler godoc
// @Summary      Featured posts
// @Description  Lead post plus up to five other featured posts for the hero section
// @Tags         posts
// @Param        q   query  string  false  "Search term applied to the other featured posts"
// @Produce      json
// @Success      200  {object}  dto.FeaturedPostsDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts/featured [get]
func FeaturedPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Featured(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, err, "", msgPostsFailed)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// RecentPostsHandler godoc
// @Summary      Recent posts
// @Description  First non-featured posts, optionally narrowed by a search term
// @Tags         posts
// @Param        q      query  string  false  "Search term"
// @Param        limit  query  int     false  "Maximum number of posts (default 6)"
// @Produce      json
// @Success      200  {array}   dto.PostDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts/recent [get]
func RecentPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultRecentLimit)))
		posts, err := svc.Recent(c.Request.Context(), c.Query("q"), limit)
		if err != nil {
			respondError(c, err, "", msgPostsFailed)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// CategoryFiltersHandler godoc
// @Summary      Category filters
// @Description  "All" followed by categories in order of first appearance, with counts
// @Tags         filters
// @Produce      json
// @Success      200  {object}  dto.CategoryFilterDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /filters/categories [get]
func CategoryFiltersHandler(svc *services.FilterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.GetCategoryFilters(c.Request.Context())
		if err != nil {
			respondError(c, err, "", msgFiltersFailed)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// TagFiltersHandler godoc
// @Summary      Tag filters
// @Description  Tag counts, optionally restricted to a category
// @Tags         filters
// @Param        category  query  string  false  "Category name, or All"
// @Produce      json
// @Success      200  {object}  dto.TagFilterDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /filters/tags [get]
func TagFiltersHandler(svc *services.FilterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.GetTagFilters(c.Request.Context(), c.Query("category"))
		if err != nil {
			respondError(c, err, "", msgFiltersFailed)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
