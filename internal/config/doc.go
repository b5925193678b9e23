// Package config loads and saves the appcanvas.json configuration file.
//
// Configuration resolves in three layers: compiled-in defaults, the
// appcanvas.json file (if present), and environment variables
// (APPCANVAS_DATABASE_URL, APPCANVAS_REDIS_ADDR, APPCANVAS_STOREFRONT_URL,
// APPCANVAS_STOREFRONT_TOKEN, APPCANVAS_S3_BUCKET), which take precedence
// so secrets never need to appear in the file.
package config
