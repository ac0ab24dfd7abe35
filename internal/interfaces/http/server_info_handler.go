package http

import (
	"fmt"
	"net"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despacho-scan/internal/application/dto"
)

// ScannerPage ruta de la UI del escáner dentro de public/.
const ScannerPage = "/components/scanner.html"

// ServerInfoHandler publica la dirección LAN del servidor para el QR de conexión.
type ServerInfoHandler struct {
	ip   string
	port int
}

// NewServerInfoHandler resuelve la IP una sola vez, al arrancar.
func NewServerInfoHandler(port int) *ServerInfoHandler {
	return &ServerInfoHandler{ip: LocalIPv4(), port: port}
}

// Get godoc
// @Summary      Dirección del servidor para las estaciones
// @Tags         info
// @Produce      json
// @Success      200  {object}  dto.ServerInfoResponse
// @Router       /api/server-info [get]
func (h *ServerInfoHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.ServerInfoResponse{
		IP:   h.ip,
		Port: h.port,
		URL:  fmt.Sprintf("http://%s:%d%s", h.ip, h.port, ScannerPage),
	})
}

// LocalIPv4 primera IPv4 no loopback de la máquina; "localhost" si no hay ninguna.
func LocalIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "localhost"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return ip4.String()
			}
		}
	}
	return "localhost"
}
