// Command token emite un JWT de operador para proteger POST /upload:
//
//	token --operator ana --role operador
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/despacho-scan/pkg/config"
	"github.com/jhoicas/despacho-scan/pkg/jwt"
)

func main() {
	operator := pflag.StringP("operator", "o", "", "identificador del operador")
	role := pflag.StringP("role", "r", jwt.RoleOperator, "rol: admin | operador | estacion")
	expMin := pflag.Int("exp", 0, "minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")
	pflag.Parse()

	if *operator == "" {
		fmt.Fprintln(os.Stderr, "--operator es requerido")
		os.Exit(2)
	}
	switch *role {
	case jwt.RoleAdmin, jwt.RoleOperator, jwt.RoleStation:
	default:
		fmt.Fprintf(os.Stderr, "rol desconocido: %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(2)
	}
	if *expMin <= 0 {
		*expMin = cfg.JWT.Expiration
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *operator, *role, cfg.JWT.Issuer, *expMin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
