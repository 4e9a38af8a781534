// Package clientip extracts the real client IP address from an HTTP request.
//
// Headers are checked in priority order:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Invalid and unspecified (0.0.0.0, ::) addresses are skipped. Results are
// normalized with net.IP.String. If nothing parses, the raw RemoteAddr is
// returned.
//
//	ip := clientip.GetIP(r)
//	log.Info("connection established", logger.ClientIP(ip))
package clientip
