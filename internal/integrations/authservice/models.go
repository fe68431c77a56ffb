package authservice

import "github.com/avdeevlv/TSP-WizardService/internal/domain"

// ExistsResponse ответ проверки существования аккаунта по телефону
type ExistsResponse struct {
	Exists bool                `json:"exists"`
	User   *domain.MatchedUser `json:"user,omitempty"`
}

// ToAccountMatch конвертирует ответ в доменную модель
func (r *ExistsResponse) ToAccountMatch() *domain.AccountMatch {
	return &domain.AccountMatch{
		Exists: r.Exists,
		User:   r.User,
	}
}

// RegisterRequest запрос на регистрацию нового аккаунта
type RegisterRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	Password  string  `json:"password"`
}

// UserPayload данные пользователя в ответах auth-сервиса
type UserPayload struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// ClientPayload данные клиентского профиля, созданного при регистрации
type ClientPayload struct {
	ID int64 `json:"id"`
}

// Tokens пара токенов сессии
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RegisterResponse ответ на регистрацию: пользователь, клиент и токены
type RegisterResponse struct {
	User   UserPayload    `json:"user"`
	Client *ClientPayload `json:"client,omitempty"`
	Tokens Tokens         `json:"tokens"`
}

// LoginRequest запрос на вход по телефону и паролю
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginResponse ответ на вход
// Сервис отвечает либо {user, tokens}, либо плоским {access_token}
type LoginResponse struct {
	User        *UserPayload `json:"user,omitempty"`
	Tokens      *Tokens      `json:"tokens,omitempty"`
	AccessToken string       `json:"access_token,omitempty"`
	ClientID    *int64       `json:"client_id,omitempty"`
}

// Access возвращает access-токен независимо от формы ответа
func (r *LoginResponse) Access() string {
	if r.Tokens != nil && r.Tokens.Access != "" {
		return r.Tokens.Access
	}
	return r.AccessToken
}

// ErrorResponse модель ошибки от auth-сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
