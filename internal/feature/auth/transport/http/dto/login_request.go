// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は /v1/auth/ エンドポイントのリクエストボディを表します。
// JSONとフォームの両方を受け付け、必須フィールドとメール形式を検証します。
type LoginReq struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}
