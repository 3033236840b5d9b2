// @title           wisaw-links API
// @version         1.0
// @description     Deep links, friendship share codes and identity checks for WiSaw.
// @BasePath        /api/v1
package api
