package utils

import (
	"strconv"
	"strings"

	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID validates a hex identifier before it reaches the store
func ParseObjectID(raw, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errno.InvalidArgumentErr.
			WithMessage("Invalid " + field).
			WithErrors(field + " must be a 24 character hex identifier")
	}
	return id, nil
}

// ParsePage page 与 limit 解析，非法值回落到默认值，limit 上限 MaxLimit，page 上限 MaxPage
func ParsePage(rawPage, rawLimit string) (page, limit int64) {
	page, err := strconv.ParseInt(rawPage, 10, 64)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(rawPage, "-") {
		page = constants.MaxPage
	} else if err != nil || page < 1 {
		page = constants.DefaultPage
	}
	if page > constants.MaxPage {
		page = constants.MaxPage
	}
	limit, err = strconv.ParseInt(rawLimit, 10, 64)
	if err != nil || limit < 1 {
		limit = constants.DefaultLimit
	}
	if limit > constants.MaxLimit {
		limit = constants.MaxLimit
	}
	return page, limit
}
