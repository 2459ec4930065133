package entities

type WalletResponse struct {
	WalletAddress *string `json:"wallet_address"`
	Connected     bool    `json:"connected"`
}

type WalletUpdateRequest struct {
	Address string `json:"address"`
}

type WalletConnectInfo struct {
	DeepLink   string   `json:"deep_link"`
	InstallURL string   `json:"install_url"`
	Steps      []string `json:"steps"`
}
