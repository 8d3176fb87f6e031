// Package photo defines the normalized capture metadata model.
//
// A CaptureRecord pairs a RAW file with the closed set of camera settings
// attributes used for burst grouping and the original capture timestamp.
// Setting-equality is exact map equality over the fixed key set; see
// SettingsKeys for the attributes involved.
package photo
