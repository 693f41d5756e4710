package version

// VERSION is set at build time with -ldflags "-X".
var VERSION = "(dev)"
