package models

type UserSetting struct {
	SettingKey   string `json:"settingKey"`
	SettingValue string `json:"settingValue"`
	UserID       string `json:"userId"`
}
