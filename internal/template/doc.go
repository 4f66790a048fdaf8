// Package template scans directory trees for YAML files stored under a
// "templates" path segment and registers each one in the object
// registry. The first path segment after "templates" becomes the
// category tag and the remaining segments plus the filename form the
// dot-joined registration name, so reports/aws/rds/instances.yaml is
// registered as (template_reports, aws.rds.instances).
package template
