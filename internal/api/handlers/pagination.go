package handlers

import (
	"fmt"
	"net/url"
	"strconv"
)

// ParsePage читает page и size из query. Отсутствующие параметры равны 0,
// нормализация остается за сервисом.
func ParsePage(query url.Values) (page, size int, err error) {
	if v := query.Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 0 {
			return 0, 0, fmt.Errorf("invalid page %q", v)
		}
	}
	if v := query.Get("size"); v != "" {
		size, err = strconv.Atoi(v)
		if err != nil || size < 0 {
			return 0, 0, fmt.Errorf("invalid size %q", v)
		}
	}
	return page, size, nil
}
