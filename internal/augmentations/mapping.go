package augmentations

import "github.com/sarifworks/augments/pkg/repository"

const augmentationColumns = "id, type, area, name, description, activation, energy_consumption"

func scanAugmentation(s repository.Scanner) (Augmentation, error) {
	var aug Augmentation

	err := s.Scan(
		&aug.ID,
		&aug.Type,
		&aug.Area,
		&aug.Name,
		&aug.Description,
		&aug.Activation,
		&aug.EnergyConsumption,
	)

	return aug, err
}
