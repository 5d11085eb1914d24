package types

// RegisterRequest creates a new account. Email is optional; there is no
// password field because the default policy authenticates by claimed
// identity (see service.AuthenticationPolicy).
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
}

// LoginRequest claims an identity by handle, creating the account when it
// does not exist yet.
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// SaveBMIRequest mirrors the calculator form. The BMI value is computed
// client-side and recomputed server-side for consistency.
type SaveBMIRequest struct {
	HeightCm float64 `json:"heightCm" binding:"required"`
	WeightKg float64 `json:"weightKg" binding:"required"`
	Age      int     `json:"age" binding:"required"`
	BMI      float64 `json:"bmi" binding:"required"`
	Category string  `json:"category"`
}

type SaveDietPlanRequest struct {
	DietType string   `json:"dietType" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Items    []string `json:"items" binding:"required"`
}

type ModuleInput struct {
	Label     string `json:"label"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type SaveModulesRequest struct {
	Modules []ModuleInput `json:"modules" binding:"required"`
}

type UpdatePreferencesRequest struct {
	Theme string `json:"theme" binding:"required"`
}
