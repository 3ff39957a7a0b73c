package iomock

//go:generate go tool mockgen -destination=writer.go -package=iomock io Writer
