package generators

import (
	"github.com/bcgov/nr-repository-composer/internal/generator"
	"github.com/bcgov/nr-repository-composer/internal/scaffold"
	"github.com/bcgov/nr-repository-composer/internal/templates"
)

func common(name string) templates.Ref {
	return templates.Join(templates.CommonDir, name)
}

// writeCommonBuild writes the NR Broker build intention and its helpers next
// to the service.
func writeCommonBuild(r *generator.Run, data templates.Data) error {
	setDefault(data, "license", "Apache-2.0")
	if err := r.Files.Render(common("build-intention.json"),
		r.Destination(workflowsDir, "build-intention.json"), data, scaffold.Managed); err != nil {
		return err
	}
	if err := r.Files.Copy(common("build-intention.sh"),
		r.Destination(workflowsDir, "build-intention.sh"), scaffold.Executable); err != nil {
		return err
	}
	return r.Files.Copy(common("check-token.yaml"),
		r.Destination(workflowsDir, "check-token.yaml"), scaffold.Managed)
}

// writeCommonDeploy writes the deployment intention and the shared deploy
// workflows.
func writeCommonDeploy(r *generator.Run, data templates.Data) error {
	if err := r.Files.Copy(common("check-deploy-job-status.sh"),
		r.Destination(workflowsDir, "check-deploy-job-status.sh"), scaffold.Executable); err != nil {
		return err
	}
	service := r.Answers.String("serviceName")
	if err := r.Files.Render(common("deployment-intention.json"),
		r.Destination(".jenkins", service+"-deployment-intention.json"), data, scaffold.Managed); err != nil {
		return err
	}
	return r.Files.Render(common("run-deploy.yaml"),
		r.Destination(workflowsDir, "run-deploy.yaml"), data, scaffold.Managed)
}

// removeLegacyWorkflow deletes a workflow written by versions that used one
// fixed file name per directory.
func removeLegacyWorkflow(r *generator.Run, file string) error {
	return r.Files.RemoveIfExists(r.Destination(workflowsDir, file))
}
