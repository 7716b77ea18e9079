package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"share_party_server/internal/infrastructure/middleware"
	"share_party_server/internal/service/lifecycle"
	"share_party_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// actorOf 当前操作者，游客返回零值
func actorOf(c *gin.Context) lifecycle.Actor {
	actor, _ := middleware.CurrentActor(c)
	return actor
}

// uintParam 解析路径中的数字 id
func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, errorx.Newf(errorx.CodeInvalidParam, "无效的 %s", name)
	}
	return uint(v), nil
}

// optionalFile 读取可选的上传文件，没有上传时返回 nil
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errorx.Wrap(err, errorx.CodeInvalidParam, "上传文件解析失败")
	}
	return fh, nil
}
