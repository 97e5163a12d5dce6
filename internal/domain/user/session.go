package user

import "strings"

// Session là danh tính của người mua cho một request, được truyền tường minh
// vào từng use case thay vì đọc từ storage toàn cục.
type Session struct {
	UserID string
	Email  string
	Name   string
	Token  string
}

func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.UserID) != "" && s.Token != ""
}
