package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug            bool   `envconfig:"debug"`
	Port             int    `envconfig:"port" default:"8080"`
	Env              string `envconfig:"env"`
	BaseUrl          string `envconfig:"base_url"`
	PostgresHost     string `envconfig:"postgres_host"`
	PostgresUser     string `envconfig:"postgres_user"`
	PostgresDB       string `envconfig:"postgres_db"`
	PostgresPort     int    `envconfig:"postgres_port"`
	PostgresPassword string `envconfig:"postgres_password"`
	JWTSecret        string `envconfig:"jwt_secret"`

	// DataDir holds the file-backed report slot when Postgres is not
	// configured.
	DataDir string `envconfig:"data_dir" default:"./data"`

	// SubmitDelay paces report submission before persisting. The product
	// deliberately holds submissions for a beat so the confirmation doesn't
	// feel instantaneous.
	SubmitDelay time.Duration `envconfig:"submit_delay" default:"1s"`

	// Geo-fence bounds for the "use my location" path, inclusive.
	GeoFenceMinLat float64 `envconfig:"geofence_min_lat" default:"40.4774"`
	GeoFenceMaxLat float64 `envconfig:"geofence_max_lat" default:"40.9176"`
	GeoFenceMinLng float64 `envconfig:"geofence_min_lng" default:"-74.2591"`
	GeoFenceMaxLng float64 `envconfig:"geofence_max_lng" default:"-73.7004"`

	NominatimBaseUrl string `envconfig:"nominatim_base_url" default:"https://nominatim.openstreetmap.org"`

	AWSRegion       string `envconfig:"aws_region"`
	AWSAccessKey    string `envconfig:"aws_access_key_id"`
	AWSSecretKey    string `envconfig:"aws_secret_access_key"`
	MediaBucketName string `envconfig:"media_bucket_name"`

	MailgunApiKey string `envconfig:"mg_public_api_key"`
	MgDomain      string `envconfig:"mg_domain"`
	MgEmailFrom   string `envconfig:"email_from"`

	AccessControlAllowOrigin string `envconfig:"access_control_allow_origin"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("localfix", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
