/*
Package utils contains decorators shared by all applications: atomic
savepoints, panic recovery, logging, action tags and metrics.
*/
package utils
