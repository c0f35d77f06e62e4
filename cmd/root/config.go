package root

import (
	"cmp"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/napneko/beacon/pkg/paths"
	"github.com/napneko/beacon/pkg/telemetry"
)

// Config is the optional YAML file passed with --config.
type Config struct {
	ClientVersion string `yaml:"client_version,omitempty"`
	DeviceGUID    string `yaml:"device_guid,omitempty"`
	WorkMode      string `yaml:"work_mode,omitempty"`
	ProductName   string `yaml:"product_name,omitempty"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

type identityFlags struct {
	configPath    string
	clientVersion string
	deviceGUID    string
	workMode      string
}

func (f *identityFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&f.clientVersion, "client-version", "", "Version of the client the application runs under (default: 1.0.0)")
	cmd.Flags().StringVar(&f.deviceGUID, "device-guid", "", "Device identifier (default: persisted random UUID)")
	cmd.Flags().StringVar(&f.workMode, "work-mode", "", "Operating mode label of the application (default: default)")
}

// resolve merges flags over the config file. loadGUID is only called when
// neither provides a device identifier.
func (f *identityFlags) resolve(loadGUID func() string) (Config, error) {
	fileCfg, err := loadConfig(f.configPath)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ClientVersion: cmp.Or(f.clientVersion, fileCfg.ClientVersion, "1.0.0"),
		DeviceGUID:    cmp.Or(f.deviceGUID, fileCfg.DeviceGUID),
		WorkMode:      cmp.Or(f.workMode, fileCfg.WorkMode, "default"),
		ProductName:   fileCfg.ProductName,
	}
	if cfg.DeviceGUID == "" {
		cfg.DeviceGUID = loadGUID()
	}
	return cfg, nil
}

func persistedDeviceGUID() string {
	return telemetry.LoadDeviceGUID(paths.GetDeviceGUIDFile())
}
