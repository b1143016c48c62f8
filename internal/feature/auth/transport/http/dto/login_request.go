package dto

// LoginReq は/loginエンドポイントのフォームボディを表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type LoginReq struct {
	Email string `form:"email" binding:"required,email"`
	Senha string `form:"senha" binding:"required"`
}
