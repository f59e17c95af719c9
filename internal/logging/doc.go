// Package logging builds the zap loggers used by the contact form binaries.
//
// Logging is silent unless a level is configured, either explicitly or via
// CONTACTFORM_LOG_LEVEL:
//
//	logger, err := logging.New(cfg.LogLevel)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
// Libraries never reach for the global logger; they accept a *zap.Logger
// through their options and default to zap.NewNop().
package logging
