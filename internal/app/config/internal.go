package config

type InternalConfig struct {
	App     App
	Secrets AppSecrets
	JWT     AppJWT
	Craft   AppCraft
	Minio   AppMinio
	MongoDB AppMongoDB
	Redis   AppRedis
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	BaseUrl                    string
	EndpointPrefix             string
	MaxRequests                int
	MaxTimeRequestsPerSeconds  int
	ShutdownTimeoutInSeconds   int
	RequestBodyLimitInMegabyte int
}

type AppSecrets struct {
	MasterKey string
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppCraft struct {
	RequestsPerSecond int
	Burst             int
}

type AppMinio struct {
	BucketName                               string
	MinioPreSignedUrlObjectExpiryTimeInHours int
}

type AppMongoDB struct {
	DbName string
}

type AppRedis struct {
	BlockCacheTTLInSeconds int
	VoteLockTTLInSeconds   int
}
