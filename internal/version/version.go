// Package version хранит сведения о сборке, заданные через -ldflags.
package version

import "fmt"

// ServiceName — имя сервиса в логах, трейсах и health-ответах.
const ServiceName = "menuboard"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GetVersion возвращает версию сборки; её видят /healthz и ресурс трейсов.
func GetVersion() string { return version }

// String собирает строку для стартового лога.
func String() string {
	return fmt.Sprintf("service=%s version=%s commit=%s date=%s", ServiceName, version, commit, date)
}
