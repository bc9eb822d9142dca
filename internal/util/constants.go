package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const (
	MimeJSON = "application/json"
	MimeHTML = "text/html"
)

// 单次提交代码的大小上限，需小于 MySQL TEXT 的 65535 字节
const MaxSubmissionBytes = 60 * 1024

// MaxCompareCells 限制一次相似度计算的矩阵规模，约 32MB
const MaxCompareCells = 4_000_000
