// Package common holds filesystem and process helpers shared by the swap services.
//
// Copies keep file modes and modification times, merge into existing
// directories and recreate symbolic links instead of following them.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
