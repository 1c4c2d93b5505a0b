package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"video-aggregator-api/config"

	"github.com/sirupsen/logrus"
)

// Errores de clasificación de las respuestas de los hosts
var (
	ErrHostUnauthorized = errors.New("clave de API no válida o caducada")
	ErrHostUnavailable  = errors.New("el host no responde o devuelve una página de error")
	ErrHostTimeout      = errors.New("el host no respondió a tiempo")
	ErrHostServerError  = errors.New("error del servidor del host")
	ErrHostBadResponse  = errors.New("respuesta del host no analizable")
)

// HostConfig es la configuración fija de cada host de video.
// Los tres hosts comparten la misma API, solo cambian estos valores.
type HostConfig struct {
	Name          string
	BaseURL       string
	UploadPath    string
	PlayerBaseURL string
	Timeout       time.Duration
}

var hostConfigs = []HostConfig{
	{
		Name:          "streamhg",
		BaseURL:       "https://streamhgapi.com/api",
		UploadPath:    "/upload/url",
		PlayerBaseURL: "https://streamhg.com/e",
		Timeout:       30 * time.Second,
	},
	{
		Name:          "earnvids",
		BaseURL:       "https://earnvidsapi.com/api",
		UploadPath:    "/upload/url",
		PlayerBaseURL: "https://earnvids.com/e",
		Timeout:       15 * time.Second,
	},
	{
		Name:          "filemoon",
		BaseURL:       "https://filemoonapi.com/api",
		UploadPath:    "/remote/add",
		PlayerBaseURL: "https://filemoon.com/e",
		Timeout:       15 * time.Second,
	},
}

// HostNames devuelve los nombres de los tres hosts en orden fijo
func HostNames() []string {
	names := make([]string, len(hostConfigs))
	for i, cfg := range hostConfigs {
		names[i] = cfg.Name
	}
	return names
}

// IsValidHost comprueba que el nombre pertenece al conjunto fijo de hosts
func IsValidHost(name string) bool {
	for _, cfg := range hostConfigs {
		if cfg.Name == name {
			return true
		}
	}
	return false
}

// PlayerLink construye el enlace embebible del reproductor para un host y filecode
func PlayerLink(host, filecode string) string {
	for _, cfg := range hostConfigs {
		if cfg.Name == host {
			return cfg.PlayerBaseURL + "/" + filecode
		}
	}
	return ""
}

// HostResponse es la respuesta común de las APIs de los hosts
type HostResponse struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	Result json.RawMessage `json:"result"`
}

// HostClient es el cliente genérico de un host de video
type HostClient struct {
	Config HostConfig
	APIKey string
	HTTP   *http.Client
}

func NewHostClient(cfg HostConfig, apiKey string) *HostClient {
	return &HostClient{
		Config: cfg,
		APIKey: apiKey,
		HTTP:   &http.Client{Timeout: cfg.Timeout},
	}
}

// NewHostClients crea los tres clientes con sus claves de API
func NewHostClients(cfg config.Config) []*HostClient {
	keys := map[string]string{
		"streamhg": cfg.StreamHGApiKey,
		"earnvids": cfg.EarnVidsApiKey,
		"filemoon": cfg.FileMoonApiKey,
	}

	clients := make([]*HostClient, len(hostConfigs))
	for i, hostCfg := range hostConfigs {
		clients[i] = NewHostClient(hostCfg, keys[hostCfg.Name])
	}
	return clients
}

// makeRequest hace una petición GET a la API del host y clasifica la respuesta.
// Nunca devuelve el cuerpo HTML de una página de error como si fueran datos.
func (h *HostClient) makeRequest(endpoint string, params map[string]string) (*HostResponse, error) {
	query := url.Values{}
	query.Set("key", h.APIKey)
	for k, v := range params {
		query.Set(k, v)
	}

	requestURL := h.Config.BaseURL + endpoint + "?" + query.Encode()
	logrus.Infof("🔍 Llamada a la API de %s: %s", h.Config.Name, endpoint)

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("API de %s: %w", h.Config.Name, err)
	}
	// Algunos hosts rechazan peticiones sin User-Agent de navegador
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := h.HTTP.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("API de %s: %w", h.Config.Name, ErrHostTimeout)
		}
		return nil, fmt.Errorf("API de %s: sin respuesta: %w", h.Config.Name, ErrHostUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("API de %s: %w", h.Config.Name, ErrHostBadResponse)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("API de %s: %w", h.Config.Name, ErrHostUnauthorized)
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("API de %s: error %d: %w", h.Config.Name, resp.StatusCode, ErrHostServerError)
	}
	if looksLikeHTML(body) {
		logrus.Errorf("❌ %s devolvió una página HTML en vez de JSON", h.Config.Name)
		return nil, fmt.Errorf("API de %s: respuesta HTML (clave no válida, servicio caído o IP bloqueada): %w",
			h.Config.Name, ErrHostUnavailable)
	}

	var parsed HostResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		preview := string(body)
		if len(preview) > 100 {
			preview = preview[:100]
		}
		return nil, fmt.Errorf("API de %s: respuesta no es JSON válido: %s: %w", h.Config.Name, preview, ErrHostBadResponse)
	}

	if parsed.Status != 0 && parsed.Status != http.StatusOK && parsed.Msg != "" {
		return nil, fmt.Errorf("API de %s: %s: %w", h.Config.Name, parsed.Msg, ErrHostServerError)
	}

	logrus.Infof("✅ %s respondió correctamente: %s", h.Config.Name, endpoint)
	return &parsed, nil
}

// looksLikeHTML detecta las páginas de error HTML que devuelven los hosts caídos
func looksLikeHTML(body []byte) bool {
	s := strings.TrimSpace(string(body))
	return strings.Contains(s, "<!DOCTYPE") ||
		strings.Contains(s, "<html") ||
		strings.Contains(s, "The page") ||
		strings.HasPrefix(s, "<")
}

// GetAccountInfo se usa como sonda de conexión antes de intentar una subida
func (h *HostClient) GetAccountInfo() (*HostResponse, error) {
	return h.makeRequest("/account/info", nil)
}

// uploadResult cubre los dos nombres de campo que usan los hosts para el filecode
type uploadResult struct {
	FileCode    string `json:"filecode"`
	FileCodeAlt string `json:"file_code"`
}

// UploadByURL pide al host que descargue el video desde la URL indicada.
// Devuelve el filecode asignado; el host acepta la petición, la transferencia
// sigue en curso en su lado.
func (h *HostClient) UploadByURL(sourceURL string) (string, error) {
	resp, err := h.makeRequest(h.Config.UploadPath, map[string]string{"url": sourceURL})
	if err != nil {
		return "", err
	}

	var result uploadResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return "", fmt.Errorf("API de %s: resultado de subida no analizable: %w", h.Config.Name, ErrHostBadResponse)
	}

	filecode := result.FileCode
	if filecode == "" {
		filecode = result.FileCodeAlt
	}
	if filecode == "" {
		return "", fmt.Errorf("API de %s: la respuesta no contiene filecode: %w", h.Config.Name, ErrHostBadResponse)
	}
	return filecode, nil
}

// GetFileInfo consulta el estado de procesamiento de un archivo ya enviado
func (h *HostClient) GetFileInfo(filecode string) (*HostResponse, error) {
	return h.makeRequest("/file/info", map[string]string{"file_code": filecode})
}
